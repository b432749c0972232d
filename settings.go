package safetyhub

import "context"

// ListKind identifies one of the editable option lists that back the
// inspection and report forms.
type ListKind string

const (
	ListLocations  ListKind = "locations"
	ListCategories ListKind = "categories"
	ListInspectors ListKind = "inspectors"
	ListManagers   ListKind = "managers"
)

// ListKinds enumerates every editable list.
var ListKinds = []ListKind{ListLocations, ListCategories, ListInspectors, ListManagers}

// IsValid returns true if the kind is a recognized list.
func (k ListKind) IsValid() bool {
	for _, v := range ListKinds {
		if v == k {
			return true
		}
	}
	return false
}

// DefaultList returns the seed values for a list kind. The factory floor
// runs bilingual, so the defaults carry the site's Chinese labels as-is.
func DefaultList(kind ListKind) []string {
	switch kind {
	case ListLocations:
		return []string{"生產線 A", "生產線 B", "倉庫 1 區", "化學品儲存區", "維修工場", "員工飯堂"}
	case ListCategories:
		return []string{"機械防護", "電力安全", "消防安全", "個人防護裝備 (PPE)", "工作環境整理", "起重機械"}
	case ListInspectors:
		return []string{"陳大文", "黃偉文", "李小龍"}
	case ListManagers:
		return []string{"陳經理", "Safety Manager", "Site Agent"}
	default:
		return nil
	}
}

// SettingsService manages the editable option lists. Lists are replaced
// wholesale; entries keep their order so the first entry doubles as the
// default pick on new forms.
type SettingsService interface {
	// GetList returns the saved list, falling back to the defaults when
	// nothing has been saved yet.
	GetList(ctx context.Context, kind ListKind) ([]string, error)

	// PutList replaces the list. Returns EINVALID for an unknown kind.
	PutList(ctx context.Context, kind ListKind, items []string) error
}

// SettingsStore is the persistence contract for option lists.
type SettingsStore interface {
	// PutList inserts or replaces a list by kind.
	PutList(ctx context.Context, kind ListKind, items []string) error

	// GetList returns the stored list, or (nil, nil) when absent.
	GetList(ctx context.Context, kind ListKind) ([]string, error)
}
