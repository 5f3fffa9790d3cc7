package assets

// AssetLoader defines the contract for loading styles and template sets.
type AssetLoader interface {
	// LoadStyle loads a tag dictionary stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the navigation templates of a named set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if header.html or footer.html is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
