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
Package config holds the settings of a single x2cwd run.

	+-----------+     +-----------------+
	|  flags    |     |  resolved paths |
	| (-v -r -n |     | (source, name,  |
	|  --sim)   |     |  destination)   |
	+-----+-----+     +--------+--------+
	      |                    |
	      +---------+----------+
	                |
	          +-----v-----+
	          |  Config   |
	          | (frozen)  |
	          +-----------+

🎯 Purpose:
- Collects the run mode and the three resolved paths in one value
- Rejects relative, unclean or missing paths before anything touches disk

⚡ Guarantees:
- A Config is a plain value; New copies the ignore patterns so later flag
  parsing cannot change a built Config
- Validate is cheap and is called again by the copy operation
*/
package config
