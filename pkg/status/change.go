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
	"path/filepath"
)

// 📊 ChangeKind says which pass produced a change
type ChangeKind int

const (
	ChangeContent ChangeKind = iota // File contents were rewritten
	ChangeFile                      // File was renamed
	ChangeFolder                    // Directory was renamed
)

// String returns a string representation of ChangeKind
func (k ChangeKind) String() string {
	switch k {
	case ChangeContent:
		return "content"
	case ChangeFile:
		return "file"
	case ChangeFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// 📄 FileChange is one touched path
type FileChange struct {
	FileName   string     `json:"file_name" yaml:"file_name"`     // Base name before the change
	FileType   string     `json:"file_type" yaml:"file_type"`     // Extension including the dot
	FolderName string     `json:"folder_name" yaml:"folder_name"` // Containing directory
	Kind       ChangeKind `json:"-" yaml:"-"`
}

// 🏭 NewFileChange describes the path as it was when the change was made
func NewFileChange(path string, kind ChangeKind) FileChange {
	return FileChange{
		FileName:   filepath.Base(path),
		FileType:   filepath.Ext(path),
		FolderName: filepath.Dir(path),
		Kind:       kind,
	}
}

// Path joins FolderName and FileName back together.
func (c FileChange) Path() string {
	return filepath.Join(c.FolderName, c.FileName)
}

// 📚 ChangeLog is an append-only, ordered record of changes
type ChangeLog struct {
	entries []FileChange
}

// 🏭 NewChangeLog creates an empty log
func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

// 📝 Append records a change
func (l *ChangeLog) Append(c FileChange) {
	l.entries = append(l.entries, c)
}

// Entries returns a copy of the recorded changes in insertion order.
func (l *ChangeLog) Entries() []FileChange {
	out := make([]FileChange, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded changes.
func (l *ChangeLog) Len() int {
	return len(l.entries)
}

// 🔍 Count returns the number of changes of the given kind
func (l *ChangeLog) Count(kind ChangeKind) int {
	n := 0
	for _, e := range l.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
