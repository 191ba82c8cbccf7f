/*
Package application is a library for building imprint notaries and
verifiers.

application implements the application-layer components shared by the
imprint executables: configuration, logging, storage selection and the
file formats of signed roots and evidence. The services themselves live
in the notary and cert subpackages.

Config

Configurations are read and written as TOML (the default) or YAML,
see ConfigLoader. Key, log and database paths are resolved relative to
the config file.

Encoding

Signed roots and evidence bundles are exchanged as JSON documents.

Logger

This module implements a generic logging system that can be used by any
imprint application/executable.
*/
package application
