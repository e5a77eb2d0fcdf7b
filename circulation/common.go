package circulation

// Instead of implementing full value objects, alias types keep the call sites readable ...

// TitleID identifies a catalog title.
type TitleID = int

// MemberClassID identifies a class of borrowers (not an individual person).
type MemberClassID = int

// MinorUnits is an amount of money in minor currency units, e.g. cents.
type MinorUnits = int

// Day is the library's day counter.
type Day = int
