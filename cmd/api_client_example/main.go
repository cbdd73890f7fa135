package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "Base URL of the weather-lookup API")
	city := flag.String("city", "London", "City to search for")
	flag.Parse()

	fmt.Println("Weather Lookup API Client Example")
	fmt.Println("=================================")

	// List the tabs
	fmt.Println("\nFetching tabs...")
	var tabs map[string]interface{}
	if _, err := getJSON(*baseURL+"/api/tabs", &tabs); err != nil {
		fmt.Printf("Error fetching tabs: %v\n", err)
		os.Exit(1)
	}
	if list, ok := tabs["tabs"].([]interface{}); ok {
		for _, t := range list {
			tab := t.(map[string]interface{})
			fmt.Printf("  %v (%v)\n", tab["name"], tab["icon"])
		}
	}

	// Current weather and forecast at the server's location
	for _, path := range []string{"/api/screen/home", "/api/screen/details"} {
		printScreen(*baseURL + path)
	}

	// Search a city
	printScreen(fmt.Sprintf("%s/api/screen/search?q=%s", *baseURL, url.QueryEscape(*city)))
}

func printScreen(target string) {
	fmt.Printf("\nFetching %s...\n", target)

	var body map[string]interface{}
	status, err := getJSON(target, &body)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if msg, ok := body["error"]; ok {
		fmt.Printf("Status %d: %v\n", status, msg)
	}

	// Pretty print the view
	prettyJSON, _ := json.MarshalIndent(body["view"], "", "  ")
	fmt.Println(string(prettyJSON))
}

func getJSON(target string, v interface{}) (int, error) {
	resp, err := http.Get(target)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}
