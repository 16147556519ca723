// Package textutil provides text processing utilities for title
// normalization, fingerprinting, similarity, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing broadcast and catalog titles for comparison
//   - Creating token-based fingerprints from titles
//   - Computing cosine similarity between fingerprints
//   - Sanitizing episode titles for safe filesystem use
//
// Normalization folds case, maps sharp s to "ss", strips diacritics via
// Unicode NFKD decomposition, and collapses everything that is not a
// letter, digit, or space. Fingerprints use term frequency vectors
// normalized for efficient comparison.
package textutil
