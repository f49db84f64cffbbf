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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidNode indicates a Node failed validation.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrEmptyNodeID indicates the node Id field is empty.
	ErrEmptyNodeID = errors.New("node id cannot be empty")

	// ErrEmptyMessageID indicates the message Id field is empty.
	ErrEmptyMessageID = errors.New("message id cannot be empty")

	// ErrInvalidNodeKind indicates an invalid NodeKind value.
	ErrInvalidNodeKind = errors.New("invalid node kind")

	// ErrInvalidMessageRole indicates an invalid MessageRole value.
	ErrInvalidMessageRole = errors.New("invalid message role")
)
