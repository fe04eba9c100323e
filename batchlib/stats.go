package batchlib

// Stats is a summary of a result set.
type Stats struct {
	Total          uint64 `json:"total"`
	Resolved       uint64 `json:"resolved"`
	InvalidAddress uint64 `json:"invalid_address"`
	NotFound       uint64 `json:"not_found"`
	DatabaseError  uint64 `json:"database_error"`
}

func (s Stats) Failed() uint64 {
	return s.Total - s.Resolved
}

func (r ResultSet) Stats() Stats {
	rv := Stats{
		Total: uint64(len(r)),
	}

	for i := range r {
		if r[i].Failure == nil {
			rv.Resolved++

			continue
		}

		switch r[i].Failure.Reason {
		case InvalidAddress:
			rv.InvalidAddress++
		case NotFound:
			rv.NotFound++
		case DatabaseError:
			rv.DatabaseError++
		}
	}

	return rv
}
