// Package guest is the module-side half of the parser ABI. A module author
// implements ports.DescriptionParser and calls Register from main; the
// package exports version, getParserName, parseFromFile, parseFromMemory and
// releaseParameter on wasip1 builds.
//
// Parsed trees are serialized into module memory and pinned there. The packed
// pointer/length of that block is the handle the host owns; the block stays
// alive until the host calls releaseParameter with it, exactly once.
package guest
