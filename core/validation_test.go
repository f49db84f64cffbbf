package core

import (
	"errors"
	"testing"
)

func TestValidateNode(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr error
	}{
		{
			name: "valid standard node",
			node: &Node{
				Id:    "n1",
				Title: "Budget Plan",
				Kind:  NodeKindStandard,
				Messages: []Message{
					{Id: "m1", Role: RoleUser, Content: "What is our Q3 budget?"},
					{Id: "m2", Role: RoleAssistant, Content: "It is 40k."},
				},
			},
			wantErr: nil,
		},
		{
			name: "valid note node without messages",
			node: &Node{
				Id:          "n2",
				Kind:        NodeKindNote,
				Description: "Remember to follow up",
			},
			wantErr: nil,
		},
		{
			name: "valid node with no indexable content",
			node: &Node{
				Id:   "n3",
				Kind: NodeKindStandard,
			},
			wantErr: nil,
		},
		{
			name:    "nil node",
			node:    nil,
			wantErr: ErrInvalidNode,
		},
		{
			name: "empty id",
			node: &Node{
				Kind: NodeKindStandard,
			},
			wantErr: ErrEmptyNodeID,
		},
		{
			name: "unknown kind",
			node: &Node{
				Id:   "n4",
				Kind: NodeKind(99),
			},
			wantErr: ErrInvalidNodeKind,
		},
		{
			name: "message without id",
			node: &Node{
				Id:   "n5",
				Kind: NodeKindStandard,
				Messages: []Message{
					{Role: RoleUser, Content: "hello"},
				},
			},
			wantErr: ErrEmptyMessageID,
		},
		{
			name: "message with bad role",
			node: &Node{
				Id:   "n6",
				Kind: NodeKindStandard,
				Messages: []Message{
					{Id: "m1", Role: RoleNone, Content: "hello"},
				},
			},
			wantErr: ErrInvalidMessageRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNode(tt.node)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateNode() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		message *Message
		wantErr error
	}{
		{
			name:    "valid user message",
			message: &Message{Id: "m1", Role: RoleUser, Content: "hi"},
			wantErr: nil,
		},
		{
			name:    "valid assistant message with empty content",
			message: &Message{Id: "m2", Role: RoleAssistant},
			wantErr: nil,
		},
		{
			name:    "nil message",
			message: nil,
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "empty id",
			message: &Message{Role: RoleUser, Content: "hi"},
			wantErr: ErrEmptyMessageID,
		},
		{
			name:    "role none",
			message: &Message{Id: "m3", Role: RoleNone},
			wantErr: ErrInvalidMessageRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.message)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMessage() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMessage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
