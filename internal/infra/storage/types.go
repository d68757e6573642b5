package storage

type KeyCount struct {
	Kind  string
	Key   string
	Count int64
}
