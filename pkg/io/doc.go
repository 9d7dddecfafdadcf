// Package io provides import and export of family member lists.
//
// # Interchange Format
//
// The canonical format is a single JSON document whose top level is an array
// of member objects:
//
//	[
//	  {
//	    "id": "ada",
//	    "name": "Ada",
//	    "gender": "female",
//	    "birthDate": "1931",
//	    "relations": {
//	      "spouseId": "bob",
//	      "childrenIds": ["cy"]
//	    }
//	  }
//	]
//
// Optional ids and dates are omitted when empty. childrenIds is always
// written, as an empty array when the member has no children.
//
// YAML files with the same shape are accepted as a hand-editable
// alternative; the format is picked from the file extension.
//
// # Validation
//
// Imports are all-or-nothing. [ReadJSON] and [ReadYAML] reject input whose
// top level is not an array, objects with unknown fields, members without
// id or name, genders outside male/female/other, self-parentage, duplicate
// ids and duplicate children. Every problem found is collected into one
// [errors.ImportFormatError] and no members are returned.
//
// Dangling relation ids are not an import error: the layout engine treats
// them as absent.
//
// # Export
//
// [WriteJSON] pretty-prints with a two-space indent. Export followed by
// import reproduces the list field for field.
package io
