package config

// NewArchiveForTest creates an Archive config for testing purposes
func NewArchiveForTest(dir, bucket, prefix string) *Archive {
	return &Archive{dir: dir, bucket: bucket, prefix: prefix}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{backend: backend, projectID: projectID, databaseID: databaseID}
}

// NewCatalogForTest creates a Catalog config for testing purposes
func NewCatalogForTest(ref, profilePath string) *Catalog {
	return &Catalog{ref: ref, profilePath: profilePath}
}
