package store

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/jeanpaul/studentdb/internal/student"
)

var studentsBucket = []byte("students")

// BoltBackend keeps records in a bbolt database, one key per student id. Values
// use the same five-line encoding as the data file.
type BoltBackend struct {
	path string
	db   *bolt.DB
}

var _ Backend = (*BoltBackend)(nil)

// OpenBoltBackend opens or creates the database at path.
func OpenBoltBackend(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt db %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(studentsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create students bucket")
	}
	return &BoltBackend{path: path, db: db}, nil
}

func (b *BoltBackend) Path() string { return b.path }

func (b *BoltBackend) Load() ([]student.Record, error) {
	records := []student.Record{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(studentsBucket)
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(k, v []byte) error {
			rec, err := student.NewDecoder(bytes.NewReader(v)).Decode()
			if err != nil {
				return errors.Wrapf(err, "key %x", k)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", b.path)
	}
	return records, nil
}

func (b *BoltBackend) Save(records []student.Record) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(studentsBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bk, err := tx.CreateBucket(studentsBucket)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		for _, r := range records {
			buf.Reset()
			if err := student.Encode(&buf, r); err != nil {
				return err
			}
			if err := bk.Put(idKey(r.ID), append([]byte(nil), buf.Bytes()...)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &PersistenceError{Op: "save", Path: b.path, Err: err}
	}
	return nil
}

// Close releases the database file lock.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func idKey(id int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}
