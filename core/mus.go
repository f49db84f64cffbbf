package core

import (
	"fmt"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-maintained MUS serializers for the types persisted to storage.
// Field order is part of the on-disk format; append new fields at the end.
var (
	IDMUS      = idMUS{}
	PointMUS   = pointMUS{}
	MessageMUS = messageMUS{}
	NodeMUS    = nodeMUS{}
)

type idMUS struct{}

func (idMUS) Size(v ID) int {
	return ord.String.Size(string(v))
}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	s, n, err := ord.String.Unmarshal(bs)
	return ID(s), n, err
}

type pointMUS struct{}

func (pointMUS) Size(v Point) int {
	return varint.Uint64.Size(math.Float64bits(v.X)) +
		varint.Uint64.Size(math.Float64bits(v.Y))
}

func (pointMUS) Marshal(v Point, bs []byte) (n int) {
	n = varint.Uint64.Marshal(math.Float64bits(v.X), bs)
	n += varint.Uint64.Marshal(math.Float64bits(v.Y), bs[n:])
	return n
}

func (pointMUS) Unmarshal(bs []byte) (v Point, n int, err error) {
	x, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	y, n1, err := varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	return Point{X: math.Float64frombits(x), Y: math.Float64frombits(y)}, n, nil
}

type messageMUS struct{}

func (messageMUS) Size(v Message) int {
	return IDMUS.Size(v.Id) +
		varint.Int.Size(int(v.Role)) +
		ord.String.Size(v.Content)
}

func (messageMUS) Marshal(v Message, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += varint.Int.Marshal(int(v.Role), bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	return n
}

func (messageMUS) Unmarshal(bs []byte) (v Message, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	role, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Role = MessageRole(role)
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

type nodeMUS struct{}

func (nodeMUS) Size(v Node) int {
	size := IDMUS.Size(v.Id) +
		ord.String.Size(v.Title) +
		ord.String.Size(v.Color) +
		PointMUS.Size(v.Position) +
		varint.Int.Size(int(v.Kind)) +
		ord.String.Size(v.Description) +
		ord.String.Size(v.RoleLabel) +
		varint.Int.Size(len(v.Messages))
	for i := range v.Messages {
		size += MessageMUS.Size(v.Messages[i])
	}
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return size
}

func (nodeMUS) Marshal(v Node, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Color, bs[n:])
	n += PointMUS.Marshal(v.Position, bs[n:])
	n += varint.Int.Marshal(int(v.Kind), bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.RoleLabel, bs[n:])
	n += varint.Int.Marshal(len(v.Messages), bs[n:])
	for i := range v.Messages {
		n += MessageMUS.Marshal(v.Messages[i], bs[n:])
	}
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (nodeMUS) Unmarshal(bs []byte) (v Node, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var n1 int
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Color, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Position, n1, err = PointMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var kind int
	if kind, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.Kind = NodeKind(kind)
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.RoleLabel, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var count int
	if count, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if count < 0 {
		return v, n, fmt.Errorf("negative message count %d", count)
	}
	if count > 0 {
		v.Messages = make([]Message, count)
		for i := 0; i < count; i++ {
			if v.Messages[i], n1, err = MessageMUS.Unmarshal(bs[n:]); err != nil {
				return v, n + n1, err
			}
			n += n1
		}
	}
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.CreatedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}
