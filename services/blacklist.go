package services

import (
	"bufio"
	"os"
)

// LoadBlackList loads one common password per line into a lookup map.
// A missing file yields an empty map so registration still works.
func LoadBlackList(filePath string) (map[string]bool, error) {
	blackList := make(map[string]bool)

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return blackList, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		blackList[scanner.Text()] = true
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return blackList, nil
}
