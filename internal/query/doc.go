// Package query routes path-shaped recipe requests to the dataset.
//
// A request path has one of four shapes, matched in order:
//
//	recipe                          every recipe (KindList)
//	recipe/ingredients/{recipeId}   ingredients of one recipe (KindIngredients)
//	recipe/instructions/{recipeId}  steps of one recipe (KindInstructions)
//	recipe/{recipeId}               scalar attributes of one recipe (KindRecipe)
//
// Anything else is an UNRECOGNIZED_REQUEST error. The content URI form
// content://com.sopan.app_link/recipe/... is accepted as well.
//
// Parse is pure. Service executes a parsed Request against a Reader and
// returns the tabular Result. A recipe id that matches nothing yields an
// empty Result, never an error; deciding what "not found" means is left to
// the caller (see internal/recipe).
package query
