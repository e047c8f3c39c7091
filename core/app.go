package core

// AppID uniquely identifies a created stateful application. IDs are
// monotonic counters owned by the WorldState.
type AppID uint64

// Schema bounds the key/value state an account (local) or application
// (global) may hold: at most NumUint integer entries and NumByteSlice
// byte-string entries.
type Schema struct {
	NumUint      uint64
	NumByteSlice uint64
}

// StateMap is a key/value store bounded by a Schema; keys are raw byte
// strings (as produced by app_local_put / app_global_put).
type StateMap map[string]Value

// clone deep-copies a StateMap.
func (m StateMap) clone() StateMap {
	out := make(StateMap, len(m))
	for k, v := range m {
		if v.IsBytes() {
			b := make([]byte, len(v.Bytes()))
			copy(b, v.Bytes())
			out[k] = BytesValue(b)
		} else {
			out[k] = v
		}
	}
	return out
}

// counts returns the number of uint64-valued and bytes-valued entries
// currently held, for schema-size checks.
func (m StateMap) counts() (numUint, numBytes uint64) {
	for _, v := range m {
		if v.IsBytes() {
			numBytes++
		} else {
			numUint++
		}
	}
	return
}

// fitsSchema reports whether adding a new entry of the given type (when key
// is not already present) would still satisfy schema.
func (m StateMap) fitsSchema(key string, newVal Value, schema Schema) bool {
	_, existed := m[key]
	numUint, numBytes := m.counts()
	if existed {
		// overwriting an existing key never changes counts unless the type changes
		old := m[key]
		if old.IsBytes() && !newVal.IsBytes() {
			numBytes--
			numUint++
		} else if !old.IsBytes() && newVal.IsBytes() {
			numUint--
			numBytes++
		}
	} else {
		if newVal.IsBytes() {
			numBytes++
		} else {
			numUint++
		}
	}
	return numUint <= schema.NumUint && numBytes <= schema.NumByteSlice
}

// LocalAppState is a single account's per-application state slot, allocated
// on opt-in.
type LocalAppState struct {
	KeyValue StateMap
	Schema   Schema
}

func (s LocalAppState) clone() LocalAppState {
	return LocalAppState{KeyValue: s.KeyValue.clone(), Schema: s.Schema}
}

// AppAttributes holds an application's program and global state; only
// present on the account that created it.
type AppAttributes struct {
	ApprovalProgram string
	ClearProgram    string
	Creator         Address
	GlobalState     StateMap
	GlobalSchema    Schema
	LocalSchema     Schema
}

func (a AppAttributes) clone() AppAttributes {
	a.GlobalState = a.GlobalState.clone()
	return a
}
