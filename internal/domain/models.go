package domain

// Repository is a single candidate repository a review can be filed against
type Repository struct {
	ID         int
	Name       string
	Path       string
	MirrorPath string // alternate path, shown in details only
	Tool       string // SCM tool name ("Git", "Subversion", ...)
	Visible    bool   // admins can hide repositories from pickers
}

// DisplayName is the name shown in the list UI
func (r Repository) DisplayName() string {
	return r.Name
}
