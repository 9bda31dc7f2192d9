// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package diag provides the ordered diagnostic sets returned by every stage of
// the CA bootstrap pipeline. A stage collects every finding it can detect
// instead of stopping at the first one, so the operator sees a complete
// report in a single run. An empty [Set] is the success sentinel.
package diag
