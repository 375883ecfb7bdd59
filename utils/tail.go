package utils

import (
	"bufio"
	"os"
)

// TailFile 读取文件最后 n 行，文件不存在时返回空切片
func TailFile(path string, n int) ([]string, error) {
	lines := []string{}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lines, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
