package types

// Record is one loaded row keyed by column name. Included associations are
// stored under the association name: []Record for collections, Record (or
// nil) for single associations.
type Record map[string]any

// Get returns the value stored under key.
func (r Record) Get(key string) any {
	return r[key]
}

// Many returns the included collection stored under name.
func (r Record) Many(name string) []Record {
	v, _ := r[name].([]Record)
	return v
}

// One returns the included single record stored under name.
func (r Record) One(name string) Record {
	v, _ := r[name].(Record)
	return v
}
