/*
Package domain contains the core model of the accessible tree explorer.

It is kept free of I/O so that the dispatcher, the renderers and every device
adapter share the same vocabulary.

# Key Entities

  - Path: a root-to-node sequence of segments parsed from "/0/1" strings.
  - Node: a transient snapshot of one accessible with its cached children.
  - Document: the serializable form of a subtree written by dumps.
  - Attribute / Query: which extended attributes a fetch populates.
  - KeySyms / ModifierCodes: symbol tables used to resolve keyboard input.
*/
package domain
