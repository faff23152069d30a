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

/*
Package config loads deeprename settings from YAML, HCL or JSON files.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	    +--------------+--------------+
	    |              |              |
	+---+----+    +----+---+    +-----+--+
	|  YAML  |    |  HCL   |    |  JSON  |
	| Parser |    | Parser |    | Parser |
	+--------+    +--------+    +--------+

🎯 Purpose:
- Picks a parser by file extension
- Fills defaults (temp root, 7-Zip executable, report format)
- Rejects unknown report formats, bad exclude patterns and empty keywords

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax, rejecting unknown keys
3. Validates and fills defaults

Command line flags are applied on top of a loaded (or default) config by
the caller and the result is validated again.

🔍 Example:

	cfg, err := config.Load(ctx, "deeprename.yaml")
	if err != nil {
		if errors.Is(err, errs.ErrConfiguration) {
			// bad file, bad values
		}
		return err
	}
	for _, pair := range cfg.Pairs {
		// ...
	}
*/
package config
