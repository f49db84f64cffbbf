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


// Package index provides the in-memory inverted index behind canvas search.
//
// The Store type indexes node titles, note bodies, assigned-role labels,
// and per-message conversation text, and answers tokenized AND-queries with
// prefix matching, a substring fallback, bounded-context snippets, and
// multi-criterion ranking that combines textual and spatial signals.
//
// The index is a derived, rebuildable cache: it is populated from node
// snapshots at session start and maintained incrementally per node
// create/update/delete. It performs no I/O of its own.
package index
