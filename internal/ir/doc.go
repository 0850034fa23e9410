// Package ir provides the attribute value types shared by every basc package.
//
// This package contains value definitions only. All other internal packages
// import ir; ir imports nothing internal except timing. Key constraints:
//   - Value is sealed: Null, String, Number, Bool, Attrs and *Deferred
//   - Attrs keeps insertion order; updating an existing key keeps its position
//   - Attrs methods never modify the receiver, they return a new set
//   - Deferred values are resolved into fresh results, never in place
package ir
