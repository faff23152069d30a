// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs defines the error kinds shared by deeprename packages.
//
// Every kind is a base error; callers wrap it with context and test for it
// with errors.Is:
//
//	if errors.Is(err, errs.ErrConfiguration) { ... }
package errs

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConfiguration covers a missing or invalid archive path, an unsupported
	// archive format, an empty search keyword, bad config files and misuse of
	// a finished session.
	ErrConfiguration = errors.Base("configuration error")

	// ErrSubprocess is returned when an external archiver exits non-zero.
	ErrSubprocess = errors.Base("subprocess failure")

	// ErrIO is returned for read, write, move, extract and create failures.
	ErrIO = errors.Base("io failure")

	// ErrReportWrite is returned when the change report cannot be written.
	ErrReportWrite = errors.Base("report write failure")
)
