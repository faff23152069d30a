/*
Package status records what a rename run touched.

	            +-------------+
	            |  ChangeLog  |
	            | (ordered)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Report   |           | Console |
	|  (rows)   |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Holds one FileChange per mutation, in the order the mutations happened
- Formats changes for the console

🔄 Flow:
1. The engine appends a FileChange after every content write, file move and folder move
2. The session hands the entries to a report writer on finish
3. The console logger prints each change as it is appended

⚡ Rules:
- Entries are never deduplicated: a file rewritten and then renamed shows up twice
- FolderName is the absolute containing directory at the time of the change
- FileType is the extension including the dot, or empty
*/
package status
