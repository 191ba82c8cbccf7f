package imprintkv

import (
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/google/uuid"
)

// StoreEvidence stores ev under a freshly generated id and returns it.
// The id is what a holder hands out to let others fetch the evidence.
func StoreEvidence(db kv.DB, ev *imprint.Evidence) (uuid.UUID, error) {
	buf, err := ev.Marshal()
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	wb := db.NewBatch()
	wb.Put(evidenceKey(id), buf)
	if err := db.Write(wb); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// LoadEvidence loads the evidence stored under id.
func LoadEvidence(db kv.DB, id uuid.UUID) (*imprint.Evidence, error) {
	buf, err := db.Get(evidenceKey(id))
	if err != nil {
		return nil, err
	}
	return imprint.UnmarshalEvidence(buf)
}

// DeleteEvidence removes the evidence stored under id.
func DeleteEvidence(db kv.DB, id uuid.UUID) error {
	return db.Delete(evidenceKey(id))
}

func evidenceKey(id uuid.UUID) []byte {
	key := make([]byte, 0, 1+len(id))
	key = append(key, EvidenceIdentifier)
	key = append(key, id[:]...)
	return key
}
