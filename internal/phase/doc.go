// Package phase defines the unit of work handled by the scheduler and the
// normalization rules that turn loosely shaped plan records into canonical
// phases. Every decoder in the repository (YAML plans, Markdown frontmatter,
// generic maps) funnels through NormalizeDependencies and NormalizeFiles so
// the graph algorithms never see more than one spelling of "empty".
package phase
