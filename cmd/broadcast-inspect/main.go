/*
 *
 * Copyright 2025 aeron-go authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

// broadcast-inspect creates, inspects and exercises broadcast segment files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/alexcwyu/aeron"
	"github.com/alexcwyu/aeron/atomicbuffer"
	"github.com/alexcwyu/aeron/broadcast"
	"github.com/alexcwyu/aeron/config"
	"github.com/alexcwyu/aeron/shm"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	settings, err := config.Load()
	if err != nil {
		logger.Error("invalid environment", "error", err)
		os.Exit(1)
	}

	var (
		segmentPath string
		capacity    uint64
	)

	root := &cobra.Command{
		Use:           "broadcast-inspect",
		Short:         "Create, inspect and exercise broadcast segment files",
		Version:       aeron.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&segmentPath, "file", "f", settings.SegmentPath, "segment file path")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new broadcast segment file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := shm.Create(segmentPath, int(capacity))
			if err != nil {
				return err
			}
			defer seg.Close()

			logger.Info("segment created", "path", segmentPath, "capacity", capacity)
			return nil
		},
	}
	createCmd.Flags().Uint64Var(&capacity, "capacity", uint64(settings.Capacity), "data region capacity in bytes (power of two)")

	countersCmd := &cobra.Command{
		Use:   "counters",
		Short: "Show the trailer counters of a segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(segmentPath, printCounters)
		},
	}

	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Walk the committed records still resident in the ring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(segmentPath, printRecords)
		},
	}

	var msgTypeID int32
	transmitCmd := &cobra.Command{
		Use:   "transmit [message]...",
		Short: "Publish messages to a segment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(segmentPath, func(buf *atomicbuffer.Buffer) error {
				tx, err := broadcast.NewTransmitter(buf)
				if err != nil {
					return err
				}
				for _, msg := range args {
					if err := tx.Transmit(msgTypeID, []byte(msg), 0, len(msg)); err != nil {
						return err
					}
				}
				logger.Info("messages transmitted", "count", len(args), "typeId", msgTypeID)
				return nil
			})
		},
	}
	transmitCmd.Flags().Int32Var(&msgTypeID, "type", 1, "message type id (> 0)")

	root.AddCommand(createCmd, countersCmd, recordsCmd, transmitCmd)

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func withBuffer(path string, fn func(*atomicbuffer.Buffer) error) error {
	seg, err := shm.Open(path)
	if err != nil {
		return err
	}
	defer seg.Close()

	buf, err := seg.Buffer()
	if err != nil {
		return err
	}
	return fn(buf)
}

func printCounters(buf *atomicbuffer.Buffer) error {
	capacity := buf.Capacity() - broadcast.TrailerLength

	tailIntent := buf.GetInt64Volatile(capacity + broadcast.TailIntentCounterOffset)
	tail := buf.GetInt64Volatile(capacity + broadcast.TailCounterOffset)
	latest := buf.GetInt64Volatile(capacity + broadcast.LatestCounterOffset)
	mask := int64(capacity) - 1

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Counter", "Position", "Offset", "Cycle"})
	rows := []struct {
		name string
		pos  int64
	}{
		{"tail-intent", tailIntent},
		{"tail", tail},
		{"latest", latest},
	}
	for _, row := range rows {
		table.Append([]string{
			row.name,
			strconv.FormatInt(row.pos, 10),
			strconv.FormatInt(row.pos&mask, 10),
			strconv.FormatInt(row.pos/int64(capacity), 10),
		})
	}
	table.Render()

	fmt.Printf("capacity=%d maxMsgLength=%d\n", capacity, broadcast.CalculateMaxMessageLength(capacity))
	return nil
}

func printRecords(buf *atomicbuffer.Buffer) error {
	capacity := buf.Capacity() - broadcast.TrailerLength
	mask := int64(capacity) - 1

	tail := buf.GetInt64Volatile(capacity + broadcast.TailCounterOffset)
	latest := buf.GetInt64Volatile(capacity + broadcast.LatestCounterOffset)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Position", "Offset", "Length", "Type"})

	appendRecord := func(position int64) int64 {
		offset := int(position & mask)
		length := buf.GetInt32(broadcast.LengthOffset(offset))
		typeID := buf.GetInt32(broadcast.TypeOffset(offset))

		typeText := strconv.FormatInt(int64(typeID), 10)
		if typeID == broadcast.PaddingMsgTypeID {
			typeText = "padding"
		}
		table.Append([]string{
			strconv.FormatInt(position, 10),
			strconv.Itoa(offset),
			strconv.FormatInt(int64(length), 10),
			typeText,
		})
		return position + int64(alignRecord(int(length)))
	}

	// Record boundaries are only known from the start of a cycle; once the
	// ring has wrapped, only the latest record has a trustworthy boundary.
	if tail <= int64(capacity) {
		for position := int64(0); position < tail; {
			position = appendRecord(position)
		}
	} else if latest < tail {
		appendRecord(latest)
	}
	table.Render()
	return nil
}

func alignRecord(length int) int {
	return (length + broadcast.RecordAlignment - 1) &^ (broadcast.RecordAlignment - 1)
}
