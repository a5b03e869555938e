//go:build !release

package log

import "log"

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	log.Print(v...)
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Println(v...)
}

// Debug calls the standard log.Print() with a [DEBUG] prefix
func Debug(v ...interface{}) {
	log.Print(append([]interface{}{"[DEBUG] "}, v...)...)
}

// Debugf calls the standard log.Printf() with a [DEBUG] prefix
func Debugf(format string, v ...interface{}) {
	log.Printf("[DEBUG] "+format, v...)
}

// Fatal calls the standard log.Fatal()
func Fatal(v ...interface{}) {
	log.Fatal(v...)
}

// Fatalf calls the standard log.Fatalf()
func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// Fatalln calls the standard log.Fatalln()
func Fatalln(v ...interface{}) {
	log.Fatalln(v...)
}
