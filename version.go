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

package aeron

import "fmt"

// Semantic version of the library.
const (
	MajorVersion = 1
	MinorVersion = 45
	PatchVersion = 0

	// Version is the semantic version text.
	Version = "1.45.0"
)

// GitSHA is the source revision the binary was built from. It is intended to
// be overridden at link time:
//
//	go build -ldflags "-X github.com/alexcwyu/aeron.GitSHA=$(git rev-parse HEAD)"
var GitSHA = "unknown"

// FullVersion returns the version text combined with the git revision.
func FullVersion() string {
	return fmt.Sprintf("aeron version %s (%s)", Version, GitSHA)
}
