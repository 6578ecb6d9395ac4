package typesystem

// Underlying resolves transparent aliases. A single-type alias resolves
// to its right-hand side, recursively; multi-type aliases and every other
// type resolve to themselves.
func Underlying(t Type) Type {
	seen := map[string]bool{}
	for {
		a, ok := t.(Alias)
		if !ok || len(a.Types) != 1 || seen[a.Name] {
			return t
		}
		seen[a.Name] = true
		t = a.Types[0]
	}
}

// AssignableTo reports whether a value of type src is acceptable where
// dst is expected:
//
//  1. the full names are equal,
//  2. src is a Literal fitting dst's primitive (integer literals fit any
//     integer whose range contains the value),
//  3. dst is a union containing a literal type equal to src,
//  4. dst is Unknown (or src is, so elaboration can continue after a
//     local failure without re-reporting).
func AssignableTo(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if IsUnknown(src) || IsUnknown(dst) {
		return true
	}
	src = Underlying(src)
	dst = Underlying(dst)
	if src.FullName() == dst.FullName() {
		return true
	}

	if lit, ok := src.(Literal); ok {
		switch d := dst.(type) {
		case Primitive:
			return lit.FitsIn(d)
		case Union:
			return d.Contains(lit)
		case Literal:
			return lit.FullName() == d.FullName()
		}
	}

	// A union value is acceptable where a wider union of the same
	// literals is expected.
	if su, ok := src.(Union); ok {
		if du, ok := dst.(Union); ok {
			for _, l := range su.Literals {
				if !du.Contains(l) {
					return false
				}
			}
			return true
		}
	}

	// Multi-type aliases accept any of their right-hand sides.
	if da, ok := dst.(Alias); ok && len(da.Types) > 1 {
		for _, t := range da.Types {
			if AssignableTo(src, t) {
				return true
			}
		}
	}

	// Arrays are assignable when their elements are equal; element
	// literals still narrow to the expected element type.
	if sa, ok := src.(Array); ok {
		if da, ok := dst.(Array); ok {
			return AssignableTo(sa.Element, da.Element)
		}
	}

	return false
}

// Join computes the least common type of a and b: the type both are
// assignable to. Reports false when no common type exists.
func Join(a, b Type) (Type, bool) {
	if a == nil {
		return b, b != nil
	}
	if b == nil {
		return a, true
	}
	if IsUnknown(a) {
		return b, true
	}
	if IsUnknown(b) {
		return a, true
	}
	if a.FullName() == b.FullName() {
		return a, true
	}
	// Two literals of the same class join at their host primitive when
	// both fit it.
	la, aIsLit := Underlying(a).(Literal)
	lb, bIsLit := Underlying(b).(Literal)
	if aIsLit && bIsLit {
		host := la.Host()
		if la.FitsIn(host) && lb.FitsIn(host) {
			return host, true
		}
		return nil, false
	}
	if AssignableTo(a, b) {
		return b, true
	}
	if AssignableTo(b, a) {
		return a, true
	}
	return nil, false
}
