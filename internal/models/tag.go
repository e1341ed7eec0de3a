package models

// TagCategory groups related tags (setup, mistake, market condition, ...).
type TagCategory struct {
	ID   string
	Name string
}

// Tag is a flat label. Each tag belongs to exactly one category; a trade
// may carry tags from any number of categories.
type Tag struct {
	ID         string
	Name       string
	CategoryID string
}

// Catalog is a read-only snapshot of the playbook and tag catalogs,
// passed explicitly into the filter so evaluation never reaches for
// ambient global state.
type Catalog struct {
	Playbooks  []Playbook
	Categories []TagCategory
	Tags       []Tag
}

// Playbook returns the playbook with the given id, or nil.
func (c *Catalog) Playbook(id string) *Playbook {
	for i := range c.Playbooks {
		if c.Playbooks[i].ID == id {
			return &c.Playbooks[i]
		}
	}
	return nil
}

// Tag returns the tag with the given id, or nil.
func (c *Catalog) Tag(id string) *Tag {
	for i := range c.Tags {
		if c.Tags[i].ID == id {
			return &c.Tags[i]
		}
	}
	return nil
}

// Category returns the tag category with the given id, or nil.
func (c *Catalog) Category(id string) *TagCategory {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}
