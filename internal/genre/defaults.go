package genre

// Genre pairs a canonical slug with its display name.
type Genre struct {
	Name string
	Slug string
}

// Defaults is the built-in anime genre taxonomy. The catalog accepts slugs
// outside this list; it exists so clients can render a browse menu without
// scanning the whole catalog.
var Defaults = []Genre{
	{Name: "Action", Slug: "action"},
	{Name: "Adventure", Slug: "adventure"},
	{Name: "Comedy", Slug: "comedy"},
	{Name: "Drama", Slug: "drama"},
	{Name: "Fantasy", Slug: "fantasy"},
	{Name: "Horror", Slug: "horror"},
	{Name: "Isekai", Slug: "isekai"},
	{Name: "Mecha", Slug: "mecha"},
	{Name: "Music", Slug: "music"},
	{Name: "Mystery", Slug: "mystery"},
	{Name: "Psychological", Slug: "psychological"},
	{Name: "Romance", Slug: "romance"},
	{Name: "Sci-Fi", Slug: "sci_fi"},
	{Name: "Seinen", Slug: "seinen"},
	{Name: "Shoujo", Slug: "shoujo"},
	{Name: "Shounen", Slug: "shounen"},
	{Name: "Slice of Life", Slug: "slice_of_life"},
	{Name: "Sports", Slug: "sports"},
	{Name: "Supernatural", Slug: "supernatural"},
	{Name: "Thriller", Slug: "thriller"},
}
