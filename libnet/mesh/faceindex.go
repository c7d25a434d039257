package mesh

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// faceIndex maps a canonical face boundary encoding to the FaceID holding it.
//
// It is backed by an in-memory LSM db that is opened lazily on first use.
type faceIndex struct {
	db *badger.DB
}

func (idx *faceIndex) autoOpen() error {
	if idx.db != nil {
		return nil
	}
	dbOpts := badger.DefaultOptions("").WithInMemory(true)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	var err error
	idx.db, err = badger.Open(dbOpts)
	if err != nil {
		return errors.Wrap(err, "open face index")
	}
	return nil
}

// lookup returns the FaceID stored under the given key, or 0 if there is none.
func (idx *faceIndex) lookup(key []byte) (edgenet.FaceID, error) {
	if err := idx.autoOpen(); err != nil {
		return 0, err
	}

	var id edgenet.FaceID
	err := idx.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return errors.Errorf("face index: bad value length %d", len(val))
			}
			id = edgenet.FaceID(binary.BigEndian.Uint32(val))
			return nil
		})
	})
	return id, err
}

func (idx *faceIndex) insert(key []byte, id edgenet.FaceID) error {
	if err := idx.autoOpen(); err != nil {
		return err
	}
	var val [4]byte
	binary.BigEndian.PutUint32(val[:], uint32(id))
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val[:])
	})
}

func (idx *faceIndex) Close() error {
	if idx.db == nil {
		return nil
	}
	err := idx.db.Close()
	idx.db = nil
	return err
}

// appendCanonicLoop appends a loop encoding that is independent of the loop's start vertex and direction.
func appendCanonicLoop(dst []byte, loop []edgenet.VtxID) []byte {
	N := len(loop)
	start := 0
	for i, vi := range loop {
		if vi < loop[start] {
			start = i
		}
	}
	step := 1
	if N > 2 && loop[(start+N-1)%N] < loop[(start+1)%N] {
		step = N - 1
	}
	for i := 0; i < N; i++ {
		dst = binary.BigEndian.AppendUint32(dst, uint32(loop[(start+i*step)%N]))
	}
	return dst
}

// appendFaceKey appends a canonical encoding of a face boundary: the outer loop, then each hole sorted by encoding.
//
// VtxIDs are never 0, so a zero word separates loops.
func appendFaceKey(dst []byte, outer []edgenet.VtxID, holes [][]edgenet.VtxID) []byte {
	dst = appendCanonicLoop(dst, outer)
	if len(holes) == 0 {
		return dst
	}
	holeKeys := make([][]byte, len(holes))
	for i, hole := range holes {
		holeKeys[i] = appendCanonicLoop(nil, hole)
	}
	sort.Slice(holeKeys, func(i, j int) bool {
		return bytes.Compare(holeKeys[i], holeKeys[j]) < 0
	})
	for _, hk := range holeKeys {
		dst = binary.BigEndian.AppendUint32(dst, 0)
		dst = append(dst, hk...)
	}
	return dst
}
