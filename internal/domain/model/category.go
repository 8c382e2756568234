package model

// Category groups notes. Categories belong to the user that created them.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	User int64  `json:"user,omitempty"`
}

// CategoryInput is the request payload for creating a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// Subcategory is a second-level grouping nested under a Category.
type Subcategory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category int64  `json:"category"`
	User     int64  `json:"user,omitempty"`
}

// SubcategoryInput is the request payload for creating a subcategory.
type SubcategoryInput struct {
	Name     string `json:"name"`
	Category int64  `json:"category"`
}
