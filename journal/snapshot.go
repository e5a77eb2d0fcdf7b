package journal

import (
	"encoding/json"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when snapshot data is not valid JSON.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrEmptyProjectionType is returned when a snapshot has no projection type.
	ErrEmptyProjectionType = errors.New("projection type must not be empty")

	// ErrEmptyFilterHash is returned when a snapshot has no filter hash.
	ErrEmptyFilterHash = errors.New("filter hash must not be empty")

	// ErrSavingSnapshotFailed is returned when a snapshot could not be saved.
	ErrSavingSnapshotFailed = errors.New("saving snapshot failed")

	// ErrLoadingSnapshotFailed is returned when a snapshot could not be loaded.
	ErrLoadingSnapshotFailed = errors.New("loading snapshot failed")
)

// Snapshot is a serialized projection together with the sequence number of the last event it contains.
// A projection is rebuilt from the snapshot plus the events appended after SequenceNumber.
type Snapshot struct {
	ProjectionType string
	FilterHash     string // Filter.Hash() of the filter the projection was built from
	SequenceNumber MaxSequenceNumberUint
	Data           json.RawMessage
	CreatedAt      time.Time
}

// Validate checks the snapshot before it is saved.
func (s Snapshot) Validate() error {
	if s.ProjectionType == "" {
		return ErrEmptyProjectionType
	}

	if s.FilterHash == "" {
		return ErrEmptyFilterHash
	}

	if !jsoniter.ConfigFastest.Valid(s.Data) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

// BuildSnapshot is a factory method for Snapshot; CreatedAt is set when the Journal saves it.
func BuildSnapshot(
	projectionType string,
	filterHash string,
	sequenceNumber MaxSequenceNumberUint,
	data json.RawMessage,
) (Snapshot, error) {

	snapshot := Snapshot{
		ProjectionType: projectionType,
		FilterHash:     filterHash,
		SequenceNumber: sequenceNumber,
		Data:           data,
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

type snapshotKey struct {
	projectionType string
	filterHash     string
}
