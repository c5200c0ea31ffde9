package repositories

func stringPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }
