// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/boltdb/bolt"
	"github.com/golang/snappy"
	"github.com/mailru/easyjson/jwriter"
)

var traceBucketName = []byte("traces")

// TraceStore persists StructLog traces to a boltdb file, keyed by code
// hash and step index, snappy-compressed before storage. It wraps a
// StructLogger: every step CaptureState hands it is both kept in memory
// (for WriteJSON/WriteTrace) and appended to disk.
type TraceStore struct {
	*StructLogger
	db       *bolt.DB
	codeHash []byte
}

// OpenTraceStore opens (creating if necessary) a boltdb file at path and
// returns a TraceStore that will persist every step captured for the
// given code hash.
func OpenTraceStore(path string, codeHash []byte) (*TraceStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("tracestore: opening %s: %v", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(traceBucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracestore: creating bucket: %v", err)
	}
	return &TraceStore{StructLogger: NewStructLogger(), db: db, codeHash: codeHash}, nil
}

// Close flushes and closes the underlying boltdb file.
func (s *TraceStore) Close() error {
	return s.db.Close()
}

func (s *TraceStore) CaptureState(pc uint64, op OpCode, gas, cost *big.Int, memory *Memory, stack *stack, contract *Contract, depth int, err error) error {
	if cErr := s.StructLogger.CaptureState(pc, op, gas, cost, memory, stack, contract, depth, err); cErr != nil {
		return cErr
	}

	step := len(s.logs) - 1
	jw := &jwriter.Writer{}
	s.logs[step].MarshalEasyJSON(jw)
	raw, werr := jw.BuildBytes()
	if werr != nil {
		return fmt.Errorf("tracestore: marshaling step %d: %v", step, werr)
	}
	compressed := snappy.Encode(nil, raw)

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(traceBucketName)
		key := traceKey(s.codeHash, step)
		return b.Put(key, compressed)
	})
}

// traceKey builds the boltdb key for a given code hash and step index:
// the hash followed by a big-endian step counter, so a prefix scan over
// one code hash's bucket range visits steps in order.
func traceKey(codeHash []byte, step int) []byte {
	key := make([]byte, len(codeHash)+8)
	copy(key, codeHash)
	binary.BigEndian.PutUint64(key[len(codeHash):], uint64(step))
	return key
}

// ReadTrace decompresses and returns the raw JSON for one persisted step.
func (s *TraceStore) ReadTrace(step int) ([]byte, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(traceBucketName)
		compressed := b.Get(traceKey(s.codeHash, step))
		if compressed == nil {
			return fmt.Errorf("tracestore: no trace at step %d", step)
		}
		decoded, err := snappy.Decode(nil, compressed)
		if err != nil {
			return err
		}
		raw = decoded
		return nil
	})
	return raw, err
}
