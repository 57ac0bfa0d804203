package storage

import (
	"encoding/json"
	"errors"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r RunRecord) ([]byte, error) {
	r.SchemaVersion = CurrentSchemaVersion
	r.CodecVersion = CurrentCodecVersion
	return json.Marshal(r)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return RunRecord{}, err
	}
	return run, nil
}

func EncodeGenerationSummaries(summaries []GenerationSummaryRecord) ([]byte, error) {
	stamped := make([]GenerationSummaryRecord, len(summaries))
	for i, s := range summaries {
		s.SchemaVersion = CurrentSchemaVersion
		s.CodecVersion = CurrentCodecVersion
		stamped[i] = s
	}
	return json.Marshal(stamped)
}

func DecodeGenerationSummaries(data []byte) ([]GenerationSummaryRecord, error) {
	var summaries []GenerationSummaryRecord
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		if err := checkVersion(s.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
