// Copyright 2026 Tessera Labs
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


// Package query provides the debounced front end of canvas search.
//
// A Controller owns the live query string as the user types, waits out a
// short debounce window before running the search, tracks in-flight and
// has-searched state for the UI, and forwards result selection to the
// host. Stale completions are discarded by request sequence number, so a
// slow search can never overwrite the results of a newer keystroke.
package query
