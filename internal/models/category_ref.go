package models

type categoryKind int

const (
	categoryKindNone categoryKind = iota
	categoryKindSystem
	categoryKindUser
)

// CategoryRef is the tagged-variant form of an expense's category link:
// either no category, a system category, or a user category. The "both set"
// state is unrepresentable here, which is exactly the invariant the
// expenses table enforces with its row-level CHECK.
type CategoryRef struct {
	kind categoryKind
	id   uint
}

func NoCategory() CategoryRef {
	return CategoryRef{kind: categoryKindNone}
}

func SystemCategoryRef(id uint) CategoryRef {
	return CategoryRef{kind: categoryKindSystem, id: id}
}

func UserCategoryRef(id uint) CategoryRef {
	return CategoryRef{kind: categoryKindUser, id: id}
}

func (r CategoryRef) IsNone() bool {
	return r.kind == categoryKindNone
}

// SystemID returns the referenced system category ID, if the variant is a
// system reference.
func (r CategoryRef) SystemID() (uint, bool) {
	if r.kind != categoryKindSystem {
		return 0, false
	}
	return r.id, true
}

// UserID returns the referenced user category ID, if the variant is a user
// reference.
func (r CategoryRef) UserID() (uint, bool) {
	if r.kind != categoryKindUser {
		return 0, false
	}
	return r.id, true
}
