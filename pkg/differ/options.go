package differ

// Option configures a Differ.
type Option func(*Differ)

// WithContext sets the number of context lines around each hunk.
func WithContext(lines int) Option {
	return func(d *Differ) {
		if lines >= 0 {
			d.context = lines
		}
	}
}
