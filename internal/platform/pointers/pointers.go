package pointers

func Int64(v int64) *int64 { return &v }
