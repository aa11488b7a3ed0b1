package types

import "encoding/json"

// entityWire is the minimal shape the delta-set algorithm and SyncNotifier
// need to read off an arbitrary entity: its id and its KMD block.
type entityWire struct {
	ID  string `json:"_id"`
	KMD *struct {
		ECT string `json:"ect,omitempty"`
		LMT string `json:"lmt,omitempty"`
	} `json:"_kmd,omitempty"`
}

// EntityMeta is the decoded {_id, _kmd.lmt} pair used for delta-set
// comparisons and sync-entry bookkeeping.
type EntityMeta struct {
	ID     string
	LMT    string
	HasKMD bool
	HasID  bool
}

// ExtractEntityMeta decodes an arbitrary entity (as returned by a rack) into
// its id and KMD metadata. It tolerates any JSON-marshalable representation.
func ExtractEntityMeta(entity any) EntityMeta {
	var raw []byte
	switch v := entity.(type) {
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return EntityMeta{}
		}
		raw = b
	}

	var w entityWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return EntityMeta{}
	}
	meta := EntityMeta{ID: w.ID, HasID: w.ID != ""}
	if w.KMD != nil {
		meta.HasKMD = true
		meta.LMT = w.KMD.LMT
	}
	return meta
}

// AsSlice normalizes an arbitrary body (a single entity, a slice of
// entities, or nil) into a []any, the way notifySync and delta-set folding
// both need.
func AsSlice(data any) []any {
	if data == nil {
		return nil
	}
	if s, ok := data.([]any); ok {
		return s
	}
	// Use reflection-free JSON roundtrip for typed slices ([]Entry, etc.)
	// and single objects alike.
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var asSlice []any
	if err := json.Unmarshal(b, &asSlice); err == nil {
		return asSlice
	}
	var single any
	if err := json.Unmarshal(b, &single); err == nil {
		return []any{single}
	}
	return nil
}
