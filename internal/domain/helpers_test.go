package domain

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }
