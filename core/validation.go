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

import "fmt"

// ValidateNode validates a Node according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Kind must be a known NodeKind
//   - Every message must pass ValidateMessage
//
// NOT validated:
//   - Title, Description, RoleLabel (nodes with no indexable content are
//     legal; the index simply skips empty units)
//   - Position (any coordinates are legal)
func ValidateNode(node *Node) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}

	if node.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNode, ErrEmptyNodeID)
	}

	if err := ValidateNodeKind(node.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNode, err)
	}

	for i := range node.Messages {
		if err := ValidateMessage(&node.Messages[i]); err != nil {
			return fmt.Errorf("%w: message %d: %w", ErrInvalidNode, i, err)
		}
	}

	return nil
}

// ValidateMessage validates a conversation Message according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Role must be user or assistant
//
// Content may be empty; empty messages are stored but produce no postings.
func ValidateMessage(message *Message) error {
	if message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if message.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyMessageID)
	}

	if message.Role != RoleUser && message.Role != RoleAssistant {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidMessage, ErrInvalidMessageRole, message.Role)
	}

	return nil
}

// ValidateNodeKind validates that a NodeKind has a valid value.
func ValidateNodeKind(kind NodeKind) error {
	switch kind {
	case NodeKindStandard, NodeKindNote, NodeKindGroup:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidNodeKind, kind)
	}
}
