package main

import _ "embed"

// AboutMe is shown above the project listing.
const AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`

// defaultCatalog is used when neither CATALOG_PATH nor CATALOG_DB is set.
//
//go:embed catalog.yaml
var defaultCatalog []byte
