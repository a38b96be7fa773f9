package chat

// Log is the append-only conversation history for one session. It is the
// sole mutation point for the transcript: entries are never reordered,
// edited, or individually removed. Not safe for concurrent use; all
// mutation must happen on the goroutine that owns the session.
type Log struct {
	records []MessageRecord
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a record to the end of the log.
func (l *Log) Append(rec MessageRecord) {
	l.records = append(l.records, rec)
}

// All returns a snapshot of the log in insertion order. Callers may hold or
// iterate the returned slice freely; mutating it does not affect the log.
func (l *Log) All() []MessageRecord {
	out := make([]MessageRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records in the log.
func (l *Log) Len() int {
	return len(l.records)
}

// Latest returns the last record, or false when the log is empty.
func (l *Log) Latest() (MessageRecord, bool) {
	if len(l.records) == 0 {
		return MessageRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Reset clears the whole log, releasing any preview handles held by user
// records. Used on logout/session end; partial edits are never possible.
func (l *Log) Reset() {
	for _, rec := range l.records {
		if rec.Image != nil {
			rec.Image.Release()
		}
	}
	l.records = nil
}
