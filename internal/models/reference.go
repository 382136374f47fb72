package models

// Reference data: Brand, BodyType and Model are entities a Car refers to but
// does not embed. They are created lazily on first use and never deleted by
// the server.

type Brand struct {
	ID   string
	Name string
}

type BodyType struct {
	ID   string
	Name string
}

type Model struct {
	ID         string
	Name       string
	BrandID    string
	BodyTypeID string
	Seats      int
	CC         int
	Bags       int

	Brand    *Brand
	BodyType *BodyType
}
