// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Normheader updates or inserts 42-style headers with same-day, realistic
timestamps.

Usage:

	$ normheader [flags...] <directory>

It collects the files in directory whose extension is listed in -ext,
orders them by name (or by modification time with -order mtime), and plans
a working session for today: every file gets a Created timestamp a minute or
two after the previous one and an Updated timestamp a few minutes after its
own Created. The session ends at or before the current time when it fits in
the day, and never spills into tomorrow.

For every file that has a header, the By, Created and Updated fields are
rewritten in place. A file has a header when its first 20 lines contain
"By:", "Created:" and "Updated:". With -add-missing, files without one get a
new header block: a C-style block comment for C-like sources, # comments
for scripts. A leading #! line stays first.

The author name is taken from -name, then $FORTY2_NAME, then git config
user.name. The email is taken from -email, then $FORTY2_EMAIL.

The tool reads an optional txtar archive, .normheader.txtar in the scanned
directory or the file passed in -config, that can contain the following
files:

  - exclusions.json: A JSON array of path suffixes to skip.
  - styles.json: A JSON object mapping file extensions to a header style,
    "c" or "hash", used when inserting headers.

Use -dry to see what would change without touching any file. Given the same
-seed, a dry run prints exactly what a real run would do. Add -v to also
see every header block that would be inserted.

Symlinks to files are followed and the file they point to is rewritten.
Files that are not writable are reported and left alone.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/normheader/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
