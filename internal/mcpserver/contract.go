package mcpserver

// FrontmatterFormatContract describes the canonical front matter block
// that docstamp injects and that downstream consumers (static-site
// generators, search indexers) rely on.
const FrontmatterFormatContract = `# Docstamp Front Matter Contract

Every stamped Markdown doc starts with this block.

## Structure

` + "```" + `markdown
---
title: "Human-readable title"
description: "One-paragraph summary, at most 200 characters"
category: reference
tags: [developer, guide]
difficulty: intermediate
last-updated: 2025-01-15
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **Field order is fixed:** title, description, category, tags,
   difficulty, last-updated. Consumers may rely on this order.
2. **title** and **description** are double-quoted strings. Embedded
   double quotes are NOT escaped; avoid them in headings and opening
   paragraphs.
3. **category** is one of: tutorial, howto, reference, explanation.
4. **tags** is a flow sequence, alphabetically sorted, at least two
   entries, no duplicates.
5. **difficulty** is optional; when present it is one of: beginner,
   intermediate, advanced. Absent means unrated.
6. **last-updated** is the ISO-8601 date (YYYY-MM-DD) of the stamping run.
7. The block opens and closes with a ` + "`---`" + ` line; a blank line
   separates it from the body.
8. A file whose first line is ` + "`---`" + ` is considered stamped and is
   never modified again.

## Relative links

Use relative Markdown links to other docs (` + "`[text](folder/doc.md)`" + `);
docstamp indexes them as the doc reference graph.
`
