package result

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds enough state to resume an interrupted batch run:
// everything decided so far, and where to pick back up.
type Checkpoint struct {
	Outcomes  []Outcome
	Completed int // number of matches fully run
	Total     int // total matches scheduled for this batch
}

// SaveCheckpoint writes batch-run state to a file.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint loads batch-run state from a file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
