package subpub

// Match implements a byte-level glob matcher: `?` matches one byte, `*`
// matches zero or more bytes with a single backtrack point, `[...]` is a
// character class (`^` negation, `a-b` ranges with swapped endpoints,
// literal `]` as the first class member), and `\x` escapes the next byte.
// Match succeeds iff pattern and data are both fully consumed.
//
// Ported in algorithmic shape from pubsub_glob_match in facil.io's
// pubsub.c, itself adapted from the Linux kernel's glob.c: only the most
// recent `*` is ever backtracked to, since retrying an earlier one can never
// succeed where a later one failed.
func Match(data, pattern []byte) bool {
	di, pi := 0, 0
	dn, pn := len(data), len(pattern)

	backPi := -1 // pattern index to resume at on backtrack; -1 means "no *seen"
	backDi := 0  // data index the next backtrack retry starts from

	var c, d byte

	for di < dn {
		if pi >= pn {
			goto backtrack
		}

		c = data[di]
		d = pattern[pi]
		di++
		pi++

		switch d {
		case '?':
			// wildcard: any single byte goes

		case '*':
			if pi >= pn {
				return true // trailing * short-circuits to success
			}
			backPi = pi
			di--       // allow a zero-length match for *
			backDi = di

		case '[':
			inverted := pi < pn && pattern[pi] == '^'
			cls := pi
			if inverted {
				cls++
			}
			if cls >= pn {
				goto backtrack // unterminated class
			}
			a := pattern[cls]
			cls++
			matched := false
			closed := false
			for {
				b := a
				if cls+1 < pn && pattern[cls] == '-' && pattern[cls+1] != ']' {
					b = pattern[cls+1]
					cls += 2
					if a > b {
						a, b = b, a
					}
				}
				if a <= c && c <= b {
					matched = true
				}
				if cls >= pn {
					break // unterminated class: closed stays false
				}
				a = pattern[cls]
				cls++
				if a == ']' {
					closed = true
					break
				}
			}
			if !closed || matched == inverted {
				goto backtrack
			}
			pi = cls

		case '\\':
			if pi >= pn {
				goto backtrack // dangling escape
			}
			d = pattern[pi]
			pi++
			if c != d {
				goto backtrack
			}

		default:
			if c != d {
				goto backtrack
			}
		}
		continue

	backtrack:
		if backPi < 0 {
			return false
		}
		pi = backPi
		backDi++
		di = backDi
	}
	// Data is exhausted: any remaining `*` may still match zero bytes.
	for pi < pn && pattern[pi] == '*' {
		pi++
	}
	return di == dn && pi == pn
}
