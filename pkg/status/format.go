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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	kindWidth  = 10 // Width for change kind
)

// 🎯 FormatFileChange formats a change for display
func FormatFileChange(c FileChange) string {
	var prefix string
	switch c.Kind {
	case ChangeContent:
		prefix = color.YellowString("⟳")
	case ChangeFile:
		prefix = color.GreenString("→")
	case ChangeFolder:
		prefix = color.CyanString("▸")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, c.FileName)
	kindPart := fmt.Sprintf("%-*s", kindWidth, c.Kind.String())

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		kindPart,
		color.HiBlackString(c.FolderName),
	)
}

// 📊 FormatSummary formats per-kind totals for a change log
func FormatSummary(l *ChangeLog) string {
	return fmt.Sprintf("%d changes (%d content, %d files, %d folders)",
		l.Len(), l.Count(ChangeContent), l.Count(ChangeFile), l.Count(ChangeFolder))
}
