package internal

// Version is the current version of the imprint tools.
const Version = "0.1.0"
