// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests that need a database call GetTestDBWithT, which skips the test when
// neither DATABASE_URL nor TODO_TEST_DB_URL is set, so the same test files
// can run with or without a database available:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.RouteGooseLogs(t)
//	    require.NoError(t, postgres.Migrate(ctx, db))
//	    testdb.ResetTables(t, db, "tasks")
//	    ...
//	}
package testdb
