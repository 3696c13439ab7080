package config

import "strings"

// Merge layers override on top of base. Empty strings and nil pointers in
// override leave the base value in place; exclude patterns accumulate.
func Merge(base, override Config) Config {
	out := base
	if strings.TrimSpace(override.Output) != "" {
		out.Output = override.Output
	}
	out.Site = mergeSite(base.Site, override.Site)
	out.Catalog = mergeCatalog(base.Catalog, override.Catalog)
	out.Render = mergeRender(base.Render, override.Render)
	return out
}

func mergeSite(base, override SiteConfig) SiteConfig {
	out := base
	if strings.TrimSpace(override.Title) != "" {
		out.Title = override.Title
	}
	if strings.TrimSpace(override.Subtitle) != "" {
		out.Subtitle = override.Subtitle
	}
	if strings.TrimSpace(override.Author) != "" {
		out.Author = override.Author
	}
	if strings.TrimSpace(override.AuthorURL) != "" {
		out.AuthorURL = override.AuthorURL
	}
	return out
}

func mergeCatalog(base, override CatalogConfig) CatalogConfig {
	out := base
	if strings.TrimSpace(override.EntryFile) != "" {
		out.EntryFile = override.EntryFile
	}
	if strings.TrimSpace(override.ReadmeFile) != "" {
		out.ReadmeFile = override.ReadmeFile
	}
	if len(override.Exclude) > 0 {
		out.Exclude = append(append([]string{}, base.Exclude...), override.Exclude...)
	}
	if override.Legacy != nil {
		out.Legacy = override.Legacy
	}
	if override.Gitignore != nil {
		out.Gitignore = override.Gitignore
	}
	return out
}

func mergeRender(base, override RenderConfig) RenderConfig {
	out := base
	if strings.TrimSpace(override.Variant) != "" {
		out.Variant = strings.ToLower(strings.TrimSpace(override.Variant))
	}
	if override.Truncate != nil {
		out.Truncate = override.Truncate
	}
	return out
}
