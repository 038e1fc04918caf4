package engine

import "encoding/json"

// exportedCell is the wire shape of one Export/Import entry: the content
// is carried pre-encoded (via Memo's Codec) so Export never needs to know
// how to serialize the stored value's concrete type, deferring value
// encoding to the caller rather than relying on encoding/json alone.
type exportedCell struct {
	Key     string `json:"key"`
	Content []byte `json:"content"`
}

// Export encodes every cell currently held in memory as JSON, for debug
// dumps and test fixtures.
func (m *Memo) Export() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]exportedCell, 0, len(m.cells))
	for key, e := range m.cells {
		encoded, err := m.codec.Encode(e.value)
		if err != nil {
			return "", err
		}
		out = append(out, exportedCell{Key: key, Content: encoded})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Import parses a JSON export produced by Export into a fresh in-memory
// Memo. The returned Memo has no backing storage, so its Sync and Close
// persist nothing.
func Import(codec Codec, exported string) (*Memo, error) {
	if codec.Decode == nil {
		return nil, errNoCodec
	}
	var in []exportedCell
	if err := json.Unmarshal([]byte(exported), &in); err != nil {
		return nil, err
	}

	m := &Memo{cells: make(map[string]*entry, len(in)), codec: codec}
	for _, c := range in {
		v, err := codec.Decode(c.Content)
		if err != nil {
			return nil, err
		}
		m.cells[c.Key] = &entry{value: v, readOnly: true}
	}
	return m, nil
}
